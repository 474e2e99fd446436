/*
Package dataset implements deterministic generation and verification of
synthetic datasets in an object → dkey → akey namespace.

Dataset is described by a Shape. Generate walks the key space of the shape,
creates objects in a container and fills every akey with content derived from
its coordinate only. Verify walks the same key space again, recomputes the
content and compares it with the fetched one. Nothing but the object
identities (Registry) is carried between the two calls: the expected content
is always derived from the Shape, so the Shape MUST NOT be changed between
Generate and the matching Verify.

Content rules:
  - single akey i holds SizePool[i % len(SizePool)] bytes of digit i % 10;
  - array akey i holds ExtentCountPool[i % len(ExtentCountPool)] extents,
    extent j holds SizePool[i % len(SizePool)] bytes of digit j % 10.

Key names are "dkey {i}", "akey single {i}" and "akey array {i}".
*/
package dataset

/*
Package datamover moves dataset containers between stores.

Copy and CopyAll transfer records from one container to another keeping
object identities, so the Registry returned by dataset.Generate for the
source container verifies the destination one.

Serialize writes a container to the archive and Deserialize restores it.
Archive consists of the header and the body:

	header: "NFSDSET1" | flags (1 byte)
	body:   CBOR sequence of records | CBOR trailer

Body is zstd-compressed if flags has FlagZstd bit. Trailer holds number of
records and BLAKE3-256 digest of their encoded bytes.
*/
package datamover

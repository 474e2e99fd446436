/*
Package kvstore implements kv.Store on top of the BoltDB database.

Database layout:

	containers (bucket)
	└── <container UUID> (bucket)
	    └── <object ID> (bucket)
	        ├── "m" → rank (4 bytes BE) | class (1 byte)
	        └── "d" + <dkey> (bucket)
	            └── <akey> (bucket)
	                ├── 0x00 → value kind
	                ├── 0x01 → single value
	                └── 0x02 + <index 8 bytes BE> → extent

Each akey bucket is recreated on insertion, so insertion replaces everything
stored under the akey before.
*/
package kvstore

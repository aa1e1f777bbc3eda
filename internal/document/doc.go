// Package document couples a resolved manifest with the images its pins
// reference.
//
// A package on disk is a directory:
//
//	<package>/
//	  Info.json   latest-schema manifest, pretty-printed, sorted keys
//	  Images/
//	    <name>    image data referenced by pin image names
//
// Entry models that directory as an in-memory tree so the package can be
// decoded and encoded without touching the filesystem; pkgfs does the disk
// I/O. File is a plain single-owner value and does no locking; see package
// session for a guarded wrapper.
package document

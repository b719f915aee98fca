// Package archive iterates the members of a shard's image archive.
//
// A Reader is pull based in the manner of sql.Rows: call Next until it
// returns false, read the current Member, then check Err. Member content is
// only valid until the following call to Next. The caller owns the Reader and
// must Close it, including when iteration is abandoned early.
//
// Supported containers are detected from the file extension: plain tar,
// gzip-compressed tar (.tar.gz, .tgz) and zip.
//
// # Usage
//
//	r, err := archive.Open("/data/laion/00007.tar")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for r.Next() {
//	    m := r.Member()
//	    if m.IsSidecar() {
//	        continue
//	    }
//	    data, err := m.Read()
//	    ...
//	}
//	return r.Err()
package archive

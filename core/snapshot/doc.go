// Package snapshot reads periodic extracts delivered as zipped CSV files.
//
// A snapshot archive carries exactly one tabular entry. Reader selects it,
// decodes the header and rows, and returns them as RawRecord values: ordered
// column/value pairs with no type coercion. Loader resolves a locator (a local
// path or s3://bucket/key) to an archive and reads it.
//
// Any failure to obtain or decode the archive is reported as *InputError. It
// is fatal for a sync run and always happens before the store is touched.
//
// # Usage
//
//	loader := snapshot.NewLoader(snapshot.Reader{EntryName: "0122_CUR.csv"}, storageClient)
//	rows, err := loader.Load(ctx, "/data/0122_CUR_Source.zip")
package snapshot

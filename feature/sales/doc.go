// Package sales keeps the property-sale reference table in sync with periodic
// snapshots of the county sales extract.
//
// # Pipeline
//
// A run loads the snapshot rows, normalizes each row into a Sale (identity key
// plus content fingerprint), loads the stored sales, classifies the difference
// with core/reconcile and applies deletes, inserts and updates in that order.
// The run always reports counts; callers look at Result.Errors to decide
// whether to alert.
//
// # Identity and change detection
//
// A sale is identified by "{swis_code}-{book}-{page}-{deed_date}", built from
// the raw values verbatim. Its fingerprint is a SHA-256 over a fixed, sorted
// list of descriptive fields (see Fingerprint). Columns outside that list,
// such as buyer and seller names, never cause an update.
//
// # Failure policy
//
//   - snapshot unreadable or empty (without opt-in): the run fails before any mutation
//   - duplicate keys already in the store: the run fails before any mutation
//   - malformed row: skipped and counted
//   - failed insert/update/delete: counted and logged, the run continues
package sales

// Package twocheckout provides a client for the 2Checkout vendor API and
// the hosted checkout redirect flow.
//
// The client covers the account, sales and product endpoints of the Admin
// API (list payments, list/detail sales, create comment, list/detail
// products), builds redirect URLs for the single-page and multi-page
// hosted checkout, and validates the MD5 hash 2Checkout attaches to return
// and INS callbacks.
//
// All calls are synchronous and surface failures immediately; there is no
// retry, caching or batching. Credentials may be swapped between calls via
// the setters, but callers must serialise credential changes against
// in-flight requests themselves.
package twocheckout

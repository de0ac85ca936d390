// Package acl is the anti-corruption layer between QuoteVault and a hosted
// PostgREST backend.
//
// [RecordStore] implements ports.RecordStore on top of the instrumented
// [clients.Client], so retries, the circuit breaker, tracing and request ID
// propagation come for free. The package translates in both directions:
//
//   - domain filters become PostgREST operators (eq, in, is.null, or/ilike)
//   - JSON rows become ports.Record values with json.Number numerics
//   - PostgREST error bodies and SQLSTATE codes become domain errors
//
// Nothing outside this package sees PostgREST wire types.
//
// # Errors
//
// [MapHTTPError] resolves a failed call in this order:
//
//  1. client errors (circuit open, retries exhausted) map to unavailable
//  2. known error codes in the body (23505, PGRST116, ...) map by code
//  3. otherwise the HTTP status decides
//
// # Example
//
//	client, err := clients.New(&clients.Config{
//		BaseURL:     "https://project.example.co/rest/v1",
//		ServiceName: "postgrest",
//		Headers:     map[string]string{"apikey": key, "Authorization": "Bearer " + key},
//	})
//	store := acl.NewRecordStore(client, acl.StoreConfig{Schema: "public"})
//	rows, err := store.QueryRows(ctx, ports.TableQuotes, ports.Query{Limit: 15})
package acl

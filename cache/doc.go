// Package cache stores fetched WSDL and schema documents.
//
// SuiteTalk WSDLs are large and change only when NetSuite ships a new
// endpoint version, so aggressive caching is safe. Backends:
//
//   - SQLiteCache: persistent on-disk cache, the default. Entries live for
//     a year unless the cache is cleared.
//   - MemoryCache: in-process cache for short-lived programs and tests.
//   - RedisCache: shared cache for fleets where many workers would
//     otherwise fetch the same schema set.
//
// All backends key by document URL and return ErrCacheMiss for absent or
// expired entries.
package cache

// Package gokeyset provides keyset ("cursor") pagination primitives for GORM.
//
// Overview
//
// Records are ordered by a list of ordering keys plus a unique key that
// breaks ties, so the ordering is total. A page is fetched with a seek
// predicate selecting rows strictly after (or before) the position encoded
// in an opaque cursor, which avoids the drift of LIMIT/OFFSET paging.
//
// Key concepts
//   - Paginator: orchestrates a single pagination call: window planning,
//     limit+1 lookahead, backward traversal and cursor emission.
//   - OrderingKey: a plain field key (Key) or a computed key (CustomKey),
//     each with a statically declared KeyType used by the cursor codec.
//   - Cursor: base64url("k1:v1,k2:v2,...") token; see EncodeCursor and
//     DecodeCursor.
//   - Executor: runs an immutable Query. GORMExecutor targets a gorm query,
//     SliceExecutor an in-memory slice, InstrumentedExecutor adds metrics.
//
// The seek predicate is
//
//	(K1 op v1 AND ... AND Kn op vn) OR (K1 = v1 AND ... AND Kn = vn AND U op u)
//
// where op is ">" or "<" depending on the declared order and the traversal
// direction, K are the non-unique keys and U is the unique key.
package gokeyset

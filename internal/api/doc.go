// Package api builds and dispatches requests against the iNaturalist REST
// API and normalizes the responses.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Reads go to the read API ([DefaultAPIURL] unless configured) and writes to
// the write API ([DefaultWriteAPIURL] unless configured).
//
// # Calls
//
// Read calls ([Client.Get], [Client.Fetch]) put every param on the query
// string and return a [Result]: an [Array] for JSON array bodies and a
// [*Response] for anything else. Write calls ([Client.Post], [Client.Put],
// [Client.Delete], [Client.Head], [Client.Upload]) return the parsed JSON
// as is.
//
// Route templates may contain ":name" placeholders, filled from params by
// [InterpolateRoute]. A missing placeholder fails the call before any
// network activity.
//
// # Authentication
//
// A bearer token comes from the [Environment] ("inaturalist-api-token") or
// [RequestOptions.APIToken]. Reads attach it only with
// [RequestOptions.UseAuth]. Writes without a token fall back to the CSRF
// pair from the environment, injected as a param.
//
// # Uploads
//
// With [RequestOptions.Upload], params are flattened by
// [FlattenMultipartParams] into bracket-notation form fields and sent as
// multipart/form-data. [CustomUpload] values become file parts.
//
// # Error Handling
//
// Errors are defined in internal/apierrors:
//
//   - MissingRouteParameterError: a placeholder had no usable param.
//   - HTTPError: status outside [200, 300); the body is not parsed.
//   - MalformedResponseBodyError: a non-empty 2xx body was not JSON.
//   - NetworkError: the transport failed.
//
// Requests are sent exactly once. There is no retry.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api

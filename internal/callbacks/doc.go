// Package callbacks holds handlers waiting for an asynchronous server
// notification, such as the completion of a file upload, and forgets them
// once their TTL passes.
package callbacks

// Package cookie implements the cookie store shared by every HTTP call of a
// login attempt.
//
// Jar ingests Set-Cookie headers, renders Cookie headers, plugs into resty as
// an http.CookieJar and round-trips through the JSON layout used by browser
// cookie exports:
//
//	[{"name":"zpw_sek","value":"...","domain":".zalo.me","path":"/",
//	  "expirationDate":1767225600,"secure":true,"httpOnly":true}]
//
// An object of the form {"cookies":[...]} is accepted on load as well.
package cookie

// Package server exposes the pipeline and history over HTTP for the mobile
// companion app: REST routes under /api, an optional bearer token, and a
// websocket event stream that mirrors pipeline state changes and history
// mutations.
package server

// Package catalog defines the game record model shared by the engine, the
// collection backends and the renderers.
//
// A Collection is any store that can list records in ID order and accept new
// candidates. The store assigns IDs; callers never invent them. The three error
// types (LoadError, ValidationError, InsertError) are the only failures the
// engine surfaces, and all of them support errors.As.
package catalog

// Package imaging handles image file I/O for the wall analysis pipeline.
//
// It wraps the stdlib decoders behind a thread-safe cache, reports file
// metadata, and saves rendered overlays. Pixel processing itself lives in
// the mask and regions packages; this package only moves images between
// disk and memory.
//
// # Thread Safety
//
// The ImageCache type, including its Info method, is safe for concurrent
// use. Save is stateless.
//
// # Performance Considerations
//
// For repeated operations on the same photograph, use ImageCache to avoid
// redundant disk reads. Large images may consume significant memory when
// cached; use Evict() or Clear() to manage memory in long-running
// processes.
package imaging

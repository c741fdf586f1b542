// Package projdir derives a stable per-project directory slug so that
// traffic logs from different working directories never collide under a
// shared output root.
package projdir

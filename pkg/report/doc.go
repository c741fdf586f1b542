// Package report renders an exchange log into a self-contained HTML
// document.
//
// Rendering is a pure function of the record list, a display title, and a
// generation timestamp; it holds no state between invocations. The report
// file is fully rewritten on each regeneration (replace, not patch), so
// consumers must tolerate a torn read while a rewrite is in progress.
package report

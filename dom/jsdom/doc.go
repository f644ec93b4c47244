// Package jsdom implements the dom interfaces over syscall/js for the
// browser build, along with the window services the application needs:
// location hash events, localStorage, document.cookie, the user agent and
// a hook for window.GLOBALS.
//
// Every file except this one is built only for js/wasm.
package jsdom

// Package banner holds the pikachu easter egg from spec.md §6: a single
// invocation argument of "pikachu" prints this art and exits, bypassing the
// REPL entirely. Adapted verbatim from original_source/faces.h's `pikachu`
// macro.
package banner

const Pikachu = `
 █▀▀▄           ▄▀▀█
 █░░░▀▄ ▄▄▄▄▄ ▄▀░░░█
  ▀▄░░░▀░░░░░▀░░░▄▀
   ▐░░▄▀░░░▀▄░░▌▄▄▀▀▀▀█
   ▌▄▄▀▀░▄░▀▀▄▄▐░░░░░░█
▄▀▀▐▀▀░▄▄▄▄▄░▀▀▌▄▄▄░░░█
█░░░▀▄░█░░░█░▄▀░░░░█▀▀▀
 ▀▄░░▀░░▀▀▀░░▀░░░▄█▀
   █░░░░░░░░░░░▄▀▄░▀▄
   █░░░░░░░░░▄▀█  █░░█
   █░░░░░░░░░░░█▄█░░▄▀
   █░░░░░░░░░░░████▀
   ▀▄▄▀▀▄▄▀▀▄▄▄█▀`

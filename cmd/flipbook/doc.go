// Command flipbook assembles numbered PNG stills into animated WebP or APNG
// files. Run without arguments it opens the interactive conversion form;
// subcommands cover one-shot conversions, the watch-directory worker, and
// queue management.
package main

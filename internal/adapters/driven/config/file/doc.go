// Package file persists pdfindex settings as TOML in the user's home
// directory (~/.pdfindex/config.toml by default).
package file

package main

import (
	"fmt"
	"io"

	"github.com/danmuck/dtproto/internal/protocol"
)

// printHeader writes each response header field as hex and decimal.
func printHeader(w io.Writer, r protocol.Response) {
	rows := []int{
		int(r.Magic),
		int(r.PacketType),
		int(r.LanguageCode),
		int(r.Year),
		int(r.Month),
		int(r.Day),
		int(r.Hour),
		int(r.Minute),
	}
	fmt.Fprintln(w, "Byte form | Numerical value")
	for _, v := range rows {
		fmt.Fprintf(w, "0x%04x    | %d\n", v, v)
	}
}

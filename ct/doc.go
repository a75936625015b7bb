// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

/*
Package ct reads and writes CT table files, the typed row/column data
format of Ragnarok Online 2.

A CT file is a 64-byte header carrying a UTF-16LE magic string ("RO2SEC!"
or the older "RO2!") and a timestamp, followed by column names, u32 type
codes, typed rows, and a CRC-16/XMODEM trailer computed over the row-value
bytes. All values decode to text; the type system maps each column's wire
encoding to and from its textual form.

	table, err := ct.Read("item.ct")
	if err != nil {
		log.Fatal(err)
	}
	if err := table.ChecksumError(); err != nil {
		log.Println(err) // diagnostic only, the table is usable
	}
	table.Rows = append(table.Rows, []string{"42", "sword", "1.5"})
	err = table.Write("item.ct")

Round-trips preserve the magic variant, timestamp, headers, type names,
and row values bit-exactly. Unknown type codes survive as "UNKNOWN_<n>"
columns decoded as i32.
*/
package ct

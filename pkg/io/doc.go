// Package io reads and writes recipes as CSV, TOML, YAML and JSON files, and
// exports calculation reports.
//
// # Formats
//
// The format is chosen from the file extension by [FormatFromPath]:
//
//   - .csv: ingredient rows only, header "name,quantity,unit,price"
//   - .toml: [[ingredients]] tables and an optional [settings] table
//   - .yaml / .yml and .json: the same document shape
//
// A document looks like this in JSON:
//
//	{
//	  "name": "Shopska salad",
//	  "ingredients": [
//	    {"name": "Tomatoes", "quantity": "0.5", "unit": "kg", "price": "3.50"}
//	  ],
//	  "settings": {"servings": "4", "markup": "100", "vat": "20"}
//	}
//
// Quantities, prices and settings may be written as strings or as plain
// numbers; both are kept as the text the calculator parses. Unit names go
// through [cost.ParseUnit], so "кг", "gr" and "pcs" are accepted. Settings
// left out of a file take the recipe defaults.
//
// Any other extension fails with INVALID_FORMAT.
//
// # Reports
//
// [WriteReport] writes line costs and the four summary figures as JSON or as
// CSV. Reports are output only; they are not read back.
//
// [cost.ParseUnit]: github.com/matzehuels/recipecost/pkg/cost.ParseUnit
package io

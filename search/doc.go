// Package search answers natural-language questions over ingested
// documents by embedding the prompt and ranking stored chunk vectors by
// similarity. A separate structured path forwards raw parameterized SQL
// to the relational service verbatim.
package search

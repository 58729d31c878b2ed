// Package ioartifact persists and loads the on-disk Run artifact: a
// directory containing meta.json, schema_report.json, streams.parquet,
// and events.parquet.
package ioartifact

// streamRow is one long-format sample row in streams.parquet: one row per
// (stream, t) pair, with every column's value for that sample packed into
// a sorted-key JSON object so a single parquet schema can carry streams of
// differing shape.
type streamRow struct {
	Stream   string  `parquet:"name=stream, type=BYTE_ARRAY, convertedtype=UTF8"`
	T        float64 `parquet:"name=t, type=DOUBLE"`
	DataJSON string  `parquet:"name=data_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// eventRow is one row in events.parquet.
type eventRow struct {
	T         float64 `parquet:"name=t, type=DOUBLE"`
	Name      string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	AttrsJSON string  `parquet:"name=attrs_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

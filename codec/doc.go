/*
Package codec translates between native Go values and the RDS Data API wire types.

It has three parts:
  - Parameter encoding (Encode, EncodeParams, Encoder)
  - Result decoding with type-aware coercion (Decode, Decoder, Payload)
  - Batch normalization (Placeholders, Normalize)

Encoding:

	p, err := codec.Encode("createdAt", time.Now())
	// p.Value is a StringValue such as "2025-03-14T09:26:53.589Z"

Decoding:
Column names are rewritten to camelCase and values are coerced by column type:

	// timestamp -> time.Time
	// json/jsonb -> result of json.Unmarshal
	// arrays -> []string, []int64, []bool, []float64 or []any
	rows, err := codec.Decode(out.ColumnMetadata, out.Records)

Other type names can be given a coercion:

	dec := codec.NewDecoder(codec.WithCoercer("numeric", func(v any) (any, error) {
	    return strconv.ParseFloat(v.(string), 64)
	}))

Batches:
Normalize makes every row carry every placeholder of the statement:

	rows := []models.Params{{"id": 1, "name": "a"}, {"id": 2}}
	names := codec.Normalize("INSERT INTO t (id, name) VALUES (:id, :name)", rows, codec.NormalizeKeyPresence)
	// rows[1]["name"] == nil
*/
package codec

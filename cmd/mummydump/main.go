// Command mummydump decodes a mummy wire payload from stdin and prints it,
// or decodes a schema-shortened payload and prints its full (untransformed)
// form.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mummydata/mummy"
)

// demoSchemas are the named schemas -schema can select, used to decode a
// transformed (schema-shortened) payload back into its untransformed form.
// mummydump ships no schema description language of its own; a real
// deployment would load these from wherever it defines its message types.
var demoSchemas = map[string]mummy.Schema{
	"point": mummy.Dict{
		{Key: mummy.Key("x"), Value: mummy.Float},
		{Key: mummy.Key("y"), Value: mummy.Float},
	},
	"person": mummy.Dict{
		{Key: mummy.Key("name"), Value: mummy.Text},
		{Key: mummy.OptionalKey("nickname"), Value: mummy.Text},
		{Key: mummy.Key("age"), Value: mummy.Int},
	},
}

func main() {
	legacy := flag.Bool("legacy", false, "decode using the legacy (pre-Date/Time/Decimal) tag set")
	untransformFlag := flag.Bool("untransform", false, "treat stdin as a schema-shortened payload and print its full form")
	schemaName := flag.String("schema", "", "name of a demo schema to untransform against (see -list-schemas)")
	listSchemas := flag.Bool("list-schemas", false, "print the names of the built-in demo schemas and exit")
	flag.Parse()

	if *listSchemas {
		for name := range demoSchemas {
			fmt.Println(name)
		}
		return
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("mummydump: reading stdin: %v", err)
	}

	if *untransformFlag {
		if err := untransform(data, *schemaName); err != nil {
			log.Fatalf("mummydump: %v", err)
		}
		return
	}

	var value any
	if *legacy {
		value, err = mummy.DecodeLegacy(data)
	} else {
		value, err = mummy.Decode(data)
	}
	if err != nil {
		log.Fatalf("mummydump: decode: %v", err)
	}

	dump(value, 0)
}

// untransform decodes data as a payload produced by Message.EncodeTransformed
// against the named demo schema, then prints the full (untransformed) value.
func untransform(data []byte, name string) error {
	s, ok := demoSchemas[name]
	if !ok {
		return fmt.Errorf("unknown -schema %q (see -list-schemas)", name)
	}

	typ, err := mummy.Bind(s)
	if err != nil {
		return fmt.Errorf("binding schema %q: %w", name, err)
	}

	msg, err := typ.DecodeTransformed(data)
	if err != nil {
		return fmt.Errorf("decoding transformed payload: %w", err)
	}

	dump(msg.Value(), 0)
	return nil
}

// dump prints value in an indented, human-readable form. It does not attempt
// to round-trip back into Go source; it exists for inspection only.
func dump(value any, depth int) {
	indent := ""
	for range depth {
		indent += "  "
	}

	switch v := value.(type) {
	case mummy.List:
		fmt.Printf("%sList[%d]\n", indent, len(v))
		for _, elem := range v {
			dump(elem, depth+1)
		}
	case mummy.Tuple:
		fmt.Printf("%sTuple[%d]\n", indent, len(v))
		for _, elem := range v {
			dump(elem, depth+1)
		}
	case mummy.Set:
		fmt.Printf("%sSet[%d]\n", indent, len(v))
		for _, elem := range v {
			dump(elem, depth+1)
		}
	case mummy.Hash:
		fmt.Printf("%sHash[%d]\n", indent, len(v))
		for _, entry := range v {
			fmt.Printf("%s  key:\n", indent)
			dump(entry.Key, depth+2)
			fmt.Printf("%s  value:\n", indent)
			dump(entry.Value, depth+2)
		}
	default:
		fmt.Printf("%s%#v\n", indent, v)
	}
}

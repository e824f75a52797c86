package helper

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// PrettyPrint writes v as indented JSON to stdout.
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("Error pretty printing")
		return
	}
	fmt.Println(string(b))
}

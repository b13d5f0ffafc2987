package ioload

import (
	"fmt"
	"strings"

	"github.com/gnames/stageload/pkg/schema"
)

// stmtTemplate is sent to the server as is, '\n' is the two characters
// MySQL reads as a newline.
const stmtTemplate = `LOAD DATA LOCAL INFILE "%s" IGNORE INTO TABLE %s ` +
	`CHARACTER SET utf8mb4 FIELDS TERMINATED BY ',' ` +
	`LINES TERMINATED BY '\n' IGNORE 1 LINES`

// Statement returns the LOAD DATA statement for a normalized path.
func Statement(path string) string {
	return fmt.Sprintf(stmtTemplate, quotePath(path), schema.TableName)
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quotePath(path string) string {
	return pathEscaper.Replace(path)
}

// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.Stderr before any log output
package compileinfoprint

import (
	"os"

	"github.com/carbocation/tso500qc/compileinfo"
)

func init() {
	compileinfo.Fprint(os.Stderr)
}

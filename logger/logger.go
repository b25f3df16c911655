package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of the formatting-structure build.
var ProgressLogger = log.New(os.Stdout, "boxtree.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like a failed
// image fetch or an unknown counter style.
var WarningLogger = log.New(os.Stdout, "boxtree.warning: ", log.Lmsgprefix)

package shell

import (
	"fmt"
	"io"
)

const helpText = `commands:
  fen [FEN]          show the position, or set it from a (quoted) FEN
  new                reset to the start position and clear the search tables
  move <uci>...      play one or more moves, e.g. move e2e4 e7e5
  undo               take back the last move
  moves              list the legal moves
  go [depth]         search the position
  perft <depth>      count leaf nodes
  divide <depth>     perft split by root move
  eval               show the material balance
  help               this text
  exit               leave the shell`

func usage(w io.Writer) {
	fmt.Fprintln(w, helpText)
}

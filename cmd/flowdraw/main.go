package main

import (
	"oss.terrastruct.com/flowdraw/flowcli"
	"oss.terrastruct.com/flowdraw/lib/xmain"
)

func main() {
	xmain.Main(flowcli.Run)
}

package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/gdlkit/pkg/gdl"
	"github.com/matzehuels/gdlkit/pkg/render/nodelink"
)

func ExampleToDOT() {
	b := gdl.NewBuilder()
	g := b.NewGraph("main")
	g.NewNode("n1").SetLabel("Entry")
	sub := g.NewSubgraph("main.0")
	sub.NewAnonymousNode().SetLabel("Exit")
	g.NewEdge("n1", "main.0").SetKind(gdl.KindBackEdge)

	dot, err := nodelink.ToDOT(g, nodelink.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(dot)
	// Output:
	// digraph G {
	//   compound=true;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14];
	//   "n1" [label="Entry"];
	//   subgraph "cluster_main.0" {
	//     label="main.0";
	//     "anonymous.0" [label="Exit"];
	//     "main.0" [shape=point, width=0, style=invis, label=""];
	//   }
	//   "n1" -> "main.0" [dir=back, style=dashed];
	// }
}

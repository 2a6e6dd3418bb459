package layout_test

import (
	"fmt"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/layout"
)

func ExampleCompute() {
	dist := distribution.MustBuild(nil, distribution.Demo())

	r, err := layout.Compute(dist, canvas.Default())
	if err != nil {
		fmt.Println(err)
		return
	}

	m, _ := r.Mode("1.1")
	fmt.Println(m.Font.Strategy, m.Font.Lines)

	c, _ := r.Category("misalign")
	fmt.Println(c.Pct.Text)
	// Output:
	// two_line [1.1 Disobey Task Specification (11.64%)]
	// 38.62%
}

func ExampleHeuristic() {
	est := layout.Heuristic{}
	fmt.Println(est.Width("abcde", 10))
	fmt.Println(layout.EstimatorName(est))
	// Output:
	// 30
	// heuristic(k=0.6)
}

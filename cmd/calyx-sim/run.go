package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	calyx "github.com/calyxir/calyx-sub005"
	"github.com/calyxir/calyx-sub005/lib"
	"github.com/calyxir/calyx-sub005/vector"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo design against a JSON test vector.",
	Long: "Run builds one of the bundled demo designs, feeds it the inputs and\n" +
		"initial memory from the vector file, and prints the final outputs and\n" +
		"memory as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("design")
		file, _ := cmd.Flags().GetString("vectors")
		steps, _ := cmd.Flags().GetUint("steps")
		if steps < 1 {
			return errors.New("steps must be at least 1")
		}

		build, ok := designs[name]
		if !ok {
			return errors.Errorf("unknown design %q", name)
		}
		c, err := build()
		if err != nil {
			return err
		}

		v := &vector.Vector{Inputs: map[string]calyx.Value{}}
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				return errors.Wrap(err, "open vectors")
			}
			defer f.Close()
			if v, err = vector.Load(f); err != nil {
				return err
			}
		}

		mem := v.Memory
		var res *calyx.Result
		for i := uint(0); i < steps; i++ {
			n := 0
			res, err = calyx.Compute(c, v.Inputs, mem, func(t *calyx.Tuple) {
				n++
				log.WithFields(log.Fields{"step": i, "leaf": n}).Debug("control leaf settled")
			})
			if err != nil {
				return err
			}
			mem = res.Memory
		}
		out, err := vector.Report(res)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().String("design", "addreg", "demo design to run (addreg, counter)")
	runCmd.Flags().String("vectors", "", "JSON test vector file")
	runCmd.Flags().Uint("steps", 1, "number of compute steps to run")
}

// demo designs, built with the builder API in lieu of the excluded
// surface-language front-end.
var designs = map[string]func() (*calyx.Component, error){
	"addreg":  addReg,
	"counter": counter,
}

// addReg sums its two inputs combinationally and latches the result.
func addReg() (*calyx.Component, error) {
	return calyx.NewBuilder("addreg", "left[32], right[32]", "out[32]").
		Instance("add", lib.Add(32)).
		Instance("r", lib.Register(32)).
		Connect("left", "add.left").
		Connect("right", "add.right").
		Connect("add.out", "r.in").
		Connect("r.out", "output.out").
		Control(calyx.Enable("add", "r")).
		Component()
}

// counter counts up to the "limit" input, one increment per control
// step, and exposes the counter register.
func counter() (*calyx.Component, error) {
	step := calyx.Enable("r", "add", "one", "lt")
	return calyx.NewBuilder("counter", "limit[32]", "count[32]").
		Instance("r", lib.Register(32)).
		Instance("add", lib.Add(32)).
		Instance("one", lib.Const(32, 1)).
		Instance("lt", lib.Lt(32)).
		Connect("r.out", "add.left").
		Connect("one.out", "add.right").
		Connect("add.out", "r.in").
		Connect("add.out", "lt.left").
		Connect("limit", "lt.right").
		Connect("r.out", "output.count").
		Control(calyx.Seq(step, calyx.While("lt.out", calyx.Seq(step)))).
		Component()
}

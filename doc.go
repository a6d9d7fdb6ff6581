/*
Package calyx simulates programs of a hardware-description
intermediate language: components exposing typed ports, wired together
by a combinational connectivity graph and driven by an imperative
control program.

For any set of external inputs, Compute settles every port value
through a worklist fixpoint, walks the control program (sequencing,
parallel composition, conditionals, loops, explicit activation of
sub-units) and advances registers and memories strictly after
combinational stabilization, so that readers always observe a
register's previously committed value within a step.

Components are assembled with a Builder and the primitive library in
package lib:

	b := calyx.NewBuilder("main", "left[32], right[32]", "out[32]")
	b.Instance("add", lib.Add(32)).
		Instance("r", lib.Register(32)).
		Connect("left", "add.left").
		Connect("right", "add.right").
		Connect("add.out", "r.in").
		Connect("r.out", "output.out").
		Control(calyx.Enable("add", "r"))
	main, err := b.Component()
*/
package calyx

// Package registers defines the narrow boundary between the control
// framework and the hardware state machine.
//
// Every state transition and status read passes through exactly two
// primitives, SetRegister and GetRegister, on a small named register
// map. This is what makes the simulated back end (pkg/sim) a drop-in
// substitute for real register I/O: drivers are written against the
// Interface contract and never branch on which back end is attached.
package registers

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/sealablab/BPD-001/pkg/catalog"
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/log"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/persistence"
	"github.com/sealablab/BPD-001/pkg/session"
	"github.com/sealablab/BPD-001/pkg/sim"
)

type consoleConfig struct {
	registry  *driver.Registry
	catalog   *catalog.Catalog
	logger    log.Logger
	statePath string
	timeScale float64
}

// console is the interactive operator loop. It owns at most one session
// and one simulator at a time.
type console struct {
	cfg consoleConfig
	rl  *readline.Instance

	sess *session.Session
	dev  *sim.Simulator
}

func newConsole(cfg consoleConfig) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "probe> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{cfg: cfg, rl: rl}, nil
}

func (c *console) run() error {
	defer c.rl.Close()
	defer c.disconnect()

	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil // EOF
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()
		case "list":
			c.cmdList()
		case "connect":
			c.cmdConnect(args)
		case "disconnect":
			c.disconnect()
		case "volt", "v":
			c.cmdVolt(args)
		case "width", "w":
			c.cmdWidth(args)
		case "arm":
			c.cmdDriver("arm")
		case "trigger", "fire":
			c.cmdDriver("trigger")
		case "disarm":
			c.cmdDriver("disarm")
		case "status", "s":
			c.cmdStatus()
		case "wait":
			c.cmdWait(args)
		case "fault":
			c.cmdFault(args)
		case "clear":
			c.cmdClear()
		case "history":
			c.cmdHistory()
		case "exit", "quit", "q":
			return nil
		default:
			c.printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.rl.Stdout(), format, args...)
}

func (c *console) printHelp() {
	c.printf(`Commands:
  list                                  probes, platforms and outputs
  connect <probe> <platform> <output> [mode]
                                        validate and open a session
  disconnect                            close the current session
  volt <v> | width <ns>                 configure (IDLE only)
  arm | trigger | disarm                drive the interlock
  status                                show a status snapshot
  wait [timeout]                        wait for return to IDLE
  fault <code>                          inject a simulated fault
  clear                                 clear the simulated fault condition
  history                               show operational history
  exit
`)
}

func (c *console) cmdList() {
	c.printf("probes:\n")
	for _, id := range c.cfg.registry.IDs() {
		c.printf("  %s\n", id)
	}
	c.printf("platforms:\n")
	for _, pid := range c.cfg.catalog.PlatformIDs() {
		p, err := c.cfg.catalog.PlatformByID(pid)
		if err != nil {
			continue
		}
		c.printf("  %s (%s)\n", p.ID, p.Name)
		for _, out := range p.Outputs {
			c.printf("    %s:", out.ID)
			for _, env := range out.Envelopes {
				c.printf(" %s %.1f..%.1fV", env.Mode, env.VoltageMin, env.VoltageMax)
			}
			c.printf("\n")
		}
	}
}

func (c *console) cmdConnect(args []string) {
	if len(args) < 3 {
		c.printf("usage: connect <probe> <platform> <output> [mode]\n")
		return
	}
	if c.sess != nil {
		c.printf("already connected; disconnect first\n")
		return
	}

	mode := model.SignalModeUnknown
	if len(args) >= 4 {
		mode = model.ParseSignalMode(args[3])
		if mode == model.SignalModeUnknown {
			c.printf("unknown mode %q (TTL or ANALOG)\n", args[3])
			return
		}
	}

	dev := sim.New(sim.Config{TimeScale: c.cfg.timeScale})
	cfg := session.Config{
		ProbeID:    args[0],
		PlatformID: args[1],
		OutputID:   args[2],
		Mode:       mode,
		Registry:   c.cfg.registry,
		Catalog:    c.cfg.catalog,
		Backend:    dev,
		Logger:     c.cfg.logger,
	}
	if c.cfg.statePath != "" {
		cfg.StateStore = persistence.NewProbeStateStore(c.cfg.statePath)
	}

	sess, err := session.Open(cfg)
	if err != nil {
		c.printf("connect failed: %v\n", err)
		return
	}

	c.sess = sess
	c.dev = dev
	caps := sess.Capabilities()
	c.printf("session %s open: %s on %s/%s\n", sess.ID(), args[0], args[1], args[2])
	c.printf("  voltage %.2f..%.2fV %s, pulse %d..%dns, cooldown %v\n",
		caps.VoltageMin, caps.VoltageMax, caps.Mode,
		caps.PulseWidthMin, caps.PulseWidthMax, caps.CooldownDuration())
}

func (c *console) disconnect() {
	if c.sess == nil {
		return
	}
	if err := c.sess.Close(); err != nil {
		c.printf("close: %v\n", err)
	}
	c.sess = nil
	c.dev = nil
}

func (c *console) connected() bool {
	if c.sess == nil {
		c.printf("not connected\n")
		return false
	}
	return true
}

func (c *console) cmdVolt(args []string) {
	if !c.connected() {
		return
	}
	if len(args) != 1 {
		c.printf("usage: volt <volts>\n")
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		c.printf("bad voltage %q\n", args[0])
		return
	}
	if err := c.sess.SetVoltage(v); err != nil {
		c.printf("set voltage: %v\n", err)
		return
	}
	c.printf("voltage set to %.3fV\n", v)
}

func (c *console) cmdWidth(args []string) {
	if !c.connected() {
		return
	}
	if len(args) != 1 {
		c.printf("usage: width <ns>\n")
		return
	}
	ns, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		c.printf("bad pulse width %q\n", args[0])
		return
	}
	if err := c.sess.SetPulseWidth(ns); err != nil {
		c.printf("set pulse width: %v\n", err)
		return
	}
	c.printf("pulse width set to %dns\n", ns)
}

func (c *console) cmdDriver(op string) {
	if !c.connected() {
		return
	}
	var err error
	switch op {
	case "arm":
		err = c.sess.Arm()
	case "trigger":
		err = c.sess.Trigger()
	case "disarm":
		err = c.sess.Disarm()
	}
	if err != nil {
		c.printf("%s: %v\n", op, err)
		return
	}
	c.printf("%s ok\n", op)
}

func (c *console) cmdStatus() {
	if !c.connected() {
		return
	}
	status, err := c.sess.Status()
	if err != nil {
		c.printf("status: %v\n", err)
		return
	}
	c.printf("ready=%t busy=%t armed=%t fault=%t", status.Ready, status.Busy, status.Armed, status.Fault)
	if status.Fault {
		c.printf(" code=%d", status.FaultCode)
	}
	c.printf("\n")
}

func (c *console) cmdWait(args []string) {
	if !c.connected() {
		return
	}
	timeout := 10 * time.Second
	if len(args) >= 1 {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			c.printf("bad timeout %q\n", args[0])
			return
		}
		timeout = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.sess.WaitForIdle(ctx); err != nil {
		if errors.Is(err, driver.ErrFaulted) {
			c.printf("fault latched during wait\n")
			return
		}
		c.printf("wait: %v\n", err)
		return
	}
	c.printf("idle\n")
}

func (c *console) cmdFault(args []string) {
	if !c.connected() {
		return
	}
	code := uint64(1)
	if len(args) >= 1 {
		var err error
		code, err = strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			c.printf("bad fault code %q\n", args[0])
			return
		}
	}
	c.dev.InjectFault(uint8(code))
	c.printf("fault %d injected\n", code)
}

func (c *console) cmdClear() {
	if !c.connected() {
		return
	}
	c.dev.ClearFaultCondition()
	c.printf("fault condition cleared; disarm to release the latch\n")
}

func (c *console) cmdHistory() {
	if !c.connected() {
		return
	}
	state := c.sess.State()
	c.printf("pulses=%d faults=%d", state.TotalPulses, state.TotalFaults)
	if state.LastVoltage != 0 {
		c.printf(" last_voltage=%.3fV", state.LastVoltage)
	}
	if state.LastPulseWidthNS != 0 {
		c.printf(" last_width=%dns", state.LastPulseWidthNS)
	}
	c.printf("\n")
	for _, rec := range state.FaultHistory {
		c.printf("  fault %d at %s\n", rec.Code, rec.At.Format(time.RFC3339))
	}
}

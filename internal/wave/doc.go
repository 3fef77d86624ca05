// Package wave provides the wave grid simulation core.
//
// A [Simulator] owns a fixed 15x20 grid of intensities, a wave front that
// sweeps back and forth across the columns, and a palette index that
// advances every [ColorPeriod] moves:
//
//   - [Simulator.Tick]: decay, paint the front, move, bounce, cycle color
//   - [Simulator.Play], [Simulator.Pause], [Simulator.Reset]: playback commands
//   - [Simulator.SetSpeed]: change the tick interval
//
// The simulator does not own a timer. A driver calls Tick at the configured
// interval while [Simulator.IsRunning] is true, and watches
// [Simulator.Generation] to know when its trigger has to be restarted.
//
// # Example
//
//	s, _ := wave.New()
//	for i := 0; i < 40; i++ {
//	    s.Tick()
//	}
//	c := s.Color().Scale(s.Grid()[0])
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Confine each one to a single
// goroutine, as the driver package does.
package wave

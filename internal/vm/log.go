package vm

import (
	"lc16vm/internal/log"
)

// WithLogger is an option function that configures the machine to log to a particular logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(m *Machine) {
		m.log = logger
	}
}

func (m *Machine) LogValue() log.Value {
	return log.GroupValue(
		log.String("PC", Word(m.Reg[PC]).String()),
		log.String("STAT", Status(m.Reg[STAT]).String()),
		log.String("R0", m.Reg[R0].String()),
		log.String("R1", m.Reg[R1].String()),
		log.String("R2", m.Reg[R2].String()),
		log.String("R3", m.Reg[R3].String()),
		log.String("R4", m.Reg[R4].String()),
		log.String("R5", m.Reg[R5].String()),
		log.String("R6", m.Reg[R6].String()),
		log.String("R7", m.Reg[R7].String()),
	)
}

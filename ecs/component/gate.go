package component

import "github.com/milk9111/switchboard/puzzle"

// BulletSwitch, Generator, PressurePlate and Relay hold the live switch
// behind an entity. Gate holds a switch gate.

type BulletSwitch struct {
	Switch *puzzle.BulletSwitch
}

var BulletSwitchComponent = NewComponent[BulletSwitch]()

type Generator struct {
	Generator *puzzle.ElementalGenerator
}

var GeneratorComponent = NewComponent[Generator]()

type PressurePlate struct {
	Plate *puzzle.PressurePlate
}

var PressurePlateComponent = NewComponent[PressurePlate]()

type Relay struct {
	Relay *puzzle.RelaySwitch
}

var RelayComponent = NewComponent[Relay]()

type Gate struct {
	Gate *puzzle.SwitchGate
}

var GateComponent = NewComponent[Gate]()

// SwitchRuntime records the listener attached to a switch so it can be
// detached when the entity goes away.
type SwitchRuntime struct {
	Cancel func()
}

var SwitchRuntimeComponent = NewComponent[SwitchRuntime]()

// PuzzleNetwork is the singleton resource driving every switch of the level.
// Names maps level names to entities.
type PuzzleNetwork struct {
	Network *puzzle.Network
	Names   map[string]uint64
	Step    float64
}

var PuzzleNetworkComponent = NewComponent[PuzzleNetwork]()

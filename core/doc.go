// Package core defines the shared data model of the orchestration engine:
// tasks and decompositions, agent capabilities and executions, ReAct steps,
// tool calls, orchestration results and progress events. Higher level
// packages (orchestrator, agent, react, tool, dialogue) depend on core and
// never on each other's internals.
package core

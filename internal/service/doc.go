// Package service orchestrates the add/review/list/export flows: it wires
// the definition providers, the scheduler, and the record store together
// behind a single WordService interface. It holds no scheduling logic of its
// own beyond dispatch.
package service

// Package errors provides the structured error type used across rpg-phases.
//
// Every error carries a Code so callers can branch on the failure class
// without string matching:
//
//	if errors.IsNotFound(err) {
//	    // unknown combatant or encounter
//	}
//
// Layer guidelines:
//
// Combat order engine:
//   - Unknown combatant ids are NotFound
//   - Duplicate combatant ids are AlreadyExists
//   - Reading state that was never computed is FailedPrecondition
//
// Orchestrators:
//   - Validate inputs with a ValidationBuilder and return InvalidArgument
//   - Wrap engine and repository errors with errors.Wrap, which keeps the code
//
// Repositories:
//   - Return NotFound for missing keys and wrap driver errors
//
// Hosts exposing the service over gRPC convert with ToGRPCError.
package errors

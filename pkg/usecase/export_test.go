package usecase

// PlanTransition is exported for testing the decision table directly
var PlanTransition = planTransition

// PlanCreation is exported for testing
var PlanCreation = planCreation

// ResolveTokens is exported for testing
var ResolveTokens = (*NotifyUseCase).resolveTokens

// SendPush is exported for testing
var SendPush = (*NotifyUseCase).sendPush

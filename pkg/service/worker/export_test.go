package worker

// RunJob is exported for testing
var RunJob = (*Worker).runJob

package watcher

// RestartDelay is exported for testing
var RestartDelay = restartDelay

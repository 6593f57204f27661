package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. Tasks are executed by a worker pool with bounded retries;
// enqueueing never blocks the caller.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

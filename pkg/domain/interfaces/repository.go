package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Client() ClientRepository
	Task() TaskRepository
	Notification() NotificationRepository

	Close() error
}

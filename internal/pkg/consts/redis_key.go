package consts

const (
	// CreatorDirtyKey 待重算聚合的创作者集合，由摄入路径写入、刷新任务消费
	CreatorDirtyKey = "creator:metrics:dirty"
)

const (
	// CreatorRefreshLock 聚合重算的尽力而为锁，拿不到锁直接跳过
	CreatorRefreshLock = "lock:creator:metrics:"
)

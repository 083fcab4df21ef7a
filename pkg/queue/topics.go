package queue

// 主题命名：genomeinsight.<域>.<动作>.
const (
	TopicFileUploaded      = "genomeinsight.files.uploaded"       // 文件通过校验并写入元数据，可进入分析
	TopicFileStatusChanged = "genomeinsight.files.status_changed" // 处理状态变化
	TopicFileDeleted       = "genomeinsight.files.deleted"        // 记录被软删除
)

// FileTopics 文件生命周期主题集合.
var FileTopics = []string{TopicFileUploaded, TopicFileStatusChanged, TopicFileDeleted}

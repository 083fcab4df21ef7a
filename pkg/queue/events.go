package queue

import "github.com/ThreeDotsLabs/watermill/message"

// PublishFileUploaded 发布 genomeinsight.files.uploaded 事件.
func PublishFileUploaded(pub message.Publisher, payload FileUploadedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileUploaded, payload, opts...)
}

// PublishFileStatusChanged 发布 genomeinsight.files.status_changed 事件.
func PublishFileStatusChanged(pub message.Publisher, payload FileStatusChangedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileStatusChanged, payload, opts...)
}

// PublishFileDeleted 发布 genomeinsight.files.deleted 事件.
func PublishFileDeleted(pub message.Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileDeleted, payload, opts...)
}

// ParseFileUploaded 将 Watermill 消息解析为强类型 Envelope.
func ParseFileUploaded(msg *message.Message) (Message[FileUploadedPayload], error) {
	return ParseWatermillMessage[FileUploadedPayload](msg)
}

func publish[T any](pub message.Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

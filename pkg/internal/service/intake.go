package service

import (
	"context"
	"io"
	"math"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/metrics"
	"github.com/yeisme/genomeinsight/pkg/queue"
	"github.com/yeisme/genomeinsight/pkg/tracing"
)

const (
	// Producer 事件头中的生产者名称.
	Producer = "genomeinsight"

	storedTimeLayout = "20060102T150405Z"
	maxNameLen       = 200
)

// IntakeRequest 一次上传.
type IntakeRequest struct {
	Filename string    // 客户端提供的文件名
	Content  io.Reader // 文件内容，只读取一次
	SizeHint int64     // 客户端声明的大小，<= 0 表示未知，只用于超限时的报告
}

// IntakeService 上传 -> 写入内容 -> 校验 -> 写入元数据.
// 任何失败路径上，未被元数据引用的内容都会被删除.
type IntakeService struct {
	blobs     blob.Store
	validator atomic.Pointer[validate.Validator]
	files     MetadataStore
	publisher message.Publisher
	now       func() time.Time
}

// NewIntakeService 创建接收服务，publisher 为空时不发布事件.
func NewIntakeService(blobs blob.Store, validator *validate.Validator, files MetadataStore,
	publisher message.Publisher,
) *IntakeService {
	s := &IntakeService{
		blobs:     blobs,
		files:     files,
		publisher: publisher,
		now:       time.Now,
	}
	s.validator.Store(validator)

	return s
}

// Validator 返回当前使用的校验器.
func (s *IntakeService) Validator() *validate.Validator { return s.validator.Load() }

// SetValidator 替换校验器，配置热重载时调用，进行中的上传继续使用旧的校验器.
func (s *IntakeService) SetValidator(v *validate.Validator) {
	if v != nil {
		s.validator.Store(v)
	}
}

// Intake 处理一次上传，成功时返回已持久化的记录.
// 失败返回 *IntakeError：KindValidation 携带校验结果，其余类别携带底层错误.
func (s *IntakeService) Intake(ctx context.Context, req IntakeRequest) (_ *model.UploadedFile, err error) {
	ctx, span := tracing.StartSpan(ctx, "intake")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	logger := nlog.Logger().With().Str("original_filename", req.Filename).Logger()

	if strings.TrimSpace(req.Filename) == "" {
		verdict := missingFilenameVerdict()
		metrics.RecordIntake(metrics.IntakeRejected, 0, 0)

		return nil, &IntakeError{Kind: KindValidation, Verdict: &verdict}
	}

	validator := s.validator.Load()

	now := s.now().UTC()
	stored := StoredFilename(req.Filename, now, uuid.New())
	// 按月分目录，避免单目录文件过多
	storagePath := now.Format("2006/01") + "/" + stored

	span.SetAttributes(attribute.String("intake.storage_path", storagePath))

	pending, err := s.write(ctx, storagePath, req, validator.MaxFileSize())
	if err != nil {
		metrics.RecordIntake(metrics.IntakeStorageFailed, 0, 0)
		logger.Error().Err(err).Str("storage_path", storagePath).Msg("blob write failed")

		return nil, &IntakeError{Kind: KindStorage, Err: err}
	}

	// 提交之后 Release 不做任何事
	defer s.release(ctx, pending, logger)

	size := pending.Size()
	// 超出上限时只写入了上限 + 1 字节，此时以客户端声明的大小为准
	if size > validator.MaxFileSize() && req.SizeHint > size {
		size = req.SizeHint
	}

	vctx, vspan := tracing.StartSpan(ctx, "intake.validate")
	verdict := validator.Validate(vctx, validate.Input{
		Filename: req.Filename,
		Size:     size,
		Path:     storagePath,
		Source:   s.blobs,
		Checksum: pending.Checksum(),
	})
	vspan.SetAttributes(
		attribute.Bool("validation.valid", verdict.IsValid),
		attribute.String("validation.file_type", string(verdict.FileType)),
	)
	vspan.End()

	if !verdict.IsValid {
		metrics.RecordIntake(metrics.IntakeRejected, size, len(verdict.Warnings))
		logger.Info().Strs("errors", verdict.Errors).Msg("upload rejected")

		return nil, &IntakeError{Kind: KindValidation, Verdict: &verdict}
	}

	// 客户端已断开时不再写入元数据
	if err := ctx.Err(); err != nil {
		metrics.RecordIntake(metrics.IntakeStorageFailed, size, 0)

		return nil, &IntakeError{Kind: KindStorage, Err: err}
	}

	rec := &model.UploadedFile{
		StoredFilename:   stored,
		OriginalFilename: req.Filename,
		StoragePath:      storagePath,
		FileSize:         size,
		FileType:         verdict.FileType,
		Status:           model.StatusUploaded,
		ValidationResult: datatypes.NewJSONType(verdict),
	}

	cctx, cspan := tracing.StartSpan(ctx, "intake.create_record")
	err = s.files.Create(cctx, rec)
	tracing.RecordError(cspan, err)
	cspan.End()

	if err != nil {
		metrics.RecordIntake(metrics.IntakeMetadataFailed, size, 0)
		logger.Error().Err(err).Str("storage_path", storagePath).Msg("metadata write failed")

		return nil, &IntakeError{Kind: KindMetadata, Err: err}
	}

	pending.Commit()
	metrics.RecordIntake(metrics.IntakeStored, size, len(verdict.Warnings))

	logger.Info().
		Str("id", rec.ID).
		Str("file_type", string(rec.FileType)).
		Int64("size", rec.FileSize).
		Int("warnings", len(verdict.Warnings)).
		Msg("upload stored")

	s.publishUploaded(ctx, rec, pending.Checksum())

	return rec, nil
}

// write 最多写入 limit + 1 字节，多出的一个字节用于判断超限.
func (s *IntakeService) write(ctx context.Context, storagePath string, req IntakeRequest, limit int64) (*blob.Pending, error) {
	ctx, span := tracing.StartSpan(ctx, "intake.write")
	defer span.End()

	content := req.Content
	// limit + 1 会溢出为负数
	if limit < math.MaxInt64 {
		content = io.LimitReader(content, limit+1)
	}

	// 客户端声明的大小不可信，一律按未知大小流式写入，以实际写入的字节数为准
	pending, err := blob.Stage(ctx, s.blobs, storagePath, content, -1)
	tracing.RecordError(span, err)

	return pending, err
}

func (s *IntakeService) release(ctx context.Context, pending *blob.Pending, logger zerolog.Logger) {
	if pending.Committed() {
		return
	}

	err := pending.Release(ctx)
	metrics.RecordCompensation(err)

	if err != nil {
		// 可能残留孤儿文件，由清理任务回收
		logger.Error().Err(err).Str("storage_path", pending.Path()).Msg("compensating delete failed")
	}
}

func (s *IntakeService) publishUploaded(ctx context.Context, rec *model.UploadedFile, checksum string) {
	if s.publisher == nil {
		return
	}

	opts := []func(*queue.EventHeader){queue.WithProducer(Producer)}
	if sc := tracing.SpanContext(ctx); sc.IsValid() {
		opts = append(opts, queue.WithTraceID(sc.TraceID().String()))
	}

	err := queue.PublishFileUploaded(s.publisher, queue.FileUploadedPayload{
		FileID:           rec.ID,
		StoredFilename:   rec.StoredFilename,
		OriginalFilename: rec.OriginalFilename,
		StoragePath:      rec.StoragePath,
		StorageKind:      s.blobs.Kind(),
		FileSize:         rec.FileSize,
		FileType:         string(rec.FileType),
		Checksum:         checksum,
		UploadedAt:       rec.UploadedAt.UTC(),
	}, opts...)
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("id", rec.ID).Msg("publish file uploaded event failed")
	}
}

func missingFilenameVerdict() validate.Verdict {
	return validate.Verdict{
		IsValid:  false,
		Errors:   []string{"filename is required"},
		Warnings: []string{},
		Metadata: validate.Metadata{},
	}
}

// StoredFilename 生成存储文件名：<UTC 时间>_<uuid>_<清理后的原始文件名>.
func StoredFilename(original string, at time.Time, id uuid.UUID) string {
	return at.UTC().Format(storedTimeLayout) + "_" + id.String() + "_" + SanitizeFilename(original)
}

// SanitizeFilename 去掉目录部分，只保留 ASCII 字母数字与 . - _，其他字符替换为 _.
// 过长时保留尾部以保留扩展名.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder

	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	s := strings.TrimLeft(b.String(), ".")
	if s == "" {
		return "file"
	}

	if len(s) > maxNameLen {
		s = s[len(s)-maxNameLen:]
	}

	return s
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
	"github.com/custodia-labs/mailblocks/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// Structure failure details.
const (
	rootStructureDetail  = "root element must be the document wrapper"
	emptyStructureDetail = "document wrapper must contain at least one element"
)

// ImportService runs the preprocess, parse and convert stages and
// reduces every failure to a *domain.ImportError.
type ImportService struct {
	repairs   driven.RepairPipeline
	parser    driven.MarkupParser
	converter driven.BlockConverter
}

// NewImportService creates a new import service.
func NewImportService(
	repairs driven.RepairPipeline,
	parser driven.MarkupParser,
	converter driven.BlockConverter,
) *ImportService {
	return &ImportService{
		repairs:   repairs,
		parser:    parser,
		converter: converter,
	}
}

// Preprocess returns the repaired markup.
func (s *ImportService) Preprocess(markup string) string {
	done := logger.Stage("preprocess")
	defer done()
	return s.repairs.Run(markup)
}

// Import converts raw markup into a Block tree.
// On failure no partial tree is returned.
func (s *ImportService) Import(ctx context.Context, markup string) (*domain.ImportResult, error) {
	logger.Section("Import")
	logger.Debug("Input: %d bytes", len(markup))

	if err := ctx.Err(); err != nil {
		return nil, domain.NewInternalError("import cancelled", err)
	}

	repaired := s.Preprocess(markup)

	doneParse := logger.Stage("parse")
	root, err := s.parser.Parse(repaired)
	doneParse()
	if err != nil {
		logger.Warn("Parse failed: %v", err)
		return nil, domain.NewSyntaxError(err)
	}

	if strings.ToLower(root.Name) != domain.TypeDocument {
		logger.Warn("Root element is <%s>", root.Name)
		return nil, domain.NewStructureError(rootStructureDetail)
	}
	if len(root.Elements()) == 0 {
		logger.Warn("Document wrapper has no child elements")
		return nil, domain.NewStructureError(emptyStructureDetail)
	}

	block, err := s.convert(root)
	if err != nil {
		logger.Warn("Conversion failed: %v", err)
		return nil, err
	}

	result := &domain.ImportResult{
		Root:       block,
		Repaired:   repaired != markup,
		BlockCount: block.Count(),
		Depth:      block.Depth(),
	}
	logger.Debug("Imported %d blocks, depth %d, repaired=%t", result.BlockCount, result.Depth, result.Repaired)
	return result, nil
}

// convert runs the converter, turning errors and panics into internal errors.
func (s *ImportService) convert(root *domain.Element) (block *domain.Block, err error) {
	done := logger.Stage("convert")
	defer done()

	defer func() {
		if r := recover(); r != nil {
			block = nil
			err = domain.NewInternalError(fmt.Sprintf("conversion panicked: %v", r), nil)
		}
	}()

	block, err = s.converter.Convert(root)
	if err != nil {
		return nil, domain.NewInternalError(err.Error(), err)
	}
	if block == nil {
		return nil, domain.NewInternalError("conversion produced no tree", nil)
	}
	if err := block.Validate(); err != nil {
		return nil, domain.NewInternalError(err.Error(), err)
	}
	return block, nil
}

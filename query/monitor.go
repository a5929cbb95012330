package query

import "github.com/CihadCengiz/ai-enhanced-qa-system/core"

// QueryMonitor provides hooks to observe the answer process.
// Implement this interface to track intermediate steps during a question.
type QueryMonitor interface {
	Start(question string)
	AfterQueryEmbedding(dimension int)
	AfterRetrieval(matches []core.RetrievalMatch)
	AfterContextAssembly(contextText string)
	Finish(answer *core.Answer)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)             {}
func (n *noopMonitor) AfterRetrieval(_ []core.RetrievalMatch) {}
func (n *noopMonitor) AfterContextAssembly(_ string)         {}
func (n *noopMonitor) Finish(_ *core.Answer)                 {}

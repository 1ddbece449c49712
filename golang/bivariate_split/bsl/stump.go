package bsl

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

//TreeNode is a node of a stump. Nodes are stored in an array. LeftIndex and RightIndex are equal to -1
//when the current node is a leaf otherwise they contain array indices of children.
//A leaf node contains LeafIndex that is an index of the LeafNodes array.
type TreeNode struct {
	TreeNodeId            int
	Condition             string
	SplitQuality          float64
	LeftIndex, RightIndex int // -1, -1 if it is a leaf
	LeafIndex             int // -1 if it is a non-leaf tree node
	NumberOfObjects       int
}

//GraphDescription returns the description of a tree node for rendering as a graph
func (node TreeNode) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("#", node.NumberOfObjects))
	sb.WriteString(fmt.Sprintln("id: ", node.TreeNodeId))
	sb.WriteString(fmt.Sprintf("gain: %6.5f\n", node.SplitQuality))
	sb.WriteString(node.Condition)
	return sb.String()
}

func NewTreeNode() TreeNode {
	return TreeNode{LeftIndex: -1, RightIndex: -1, LeafIndex: -1}
}

//IsLeaf returns whether this node is a LeafNode.
func (node TreeNode) IsLeaf() bool {
	return node.LeafIndex != -1
}

//LeafNode stores the class distribution of the points routed to a leaf.
type LeafNode struct {
	LeafNodeId      int
	Condition       string
	ClassCounts     []int
	Prediction      int
	Entropy         float64
	RecordIds       []int
	NumberOfObjects int
}

//GraphDescription returns the description of a leaf node for rendering as a graph
func (node LeafNode) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("id: ", node.LeafNodeId))
	if node.Condition != "" {
		sb.WriteString(fmt.Sprintln(node.Condition))
	}
	sb.WriteString("[")
	for ind, val := range node.ClassCounts {
		if ind > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprint(val))
	}
	sb.WriteString("]\n")
	sb.WriteString(fmt.Sprintf("class: %d, entropy: %4.3f", node.Prediction, node.Entropy))
	return sb.String()
}

func newLeafNode(ds Dataset, condition string, fallbackPrediction int) LeafNode {
	counts := ds.ClassCounts()
	leaf := LeafNode{
		LeafNodeId:      -1,
		Condition:       condition,
		ClassCounts:     counts,
		Prediction:      fallbackPrediction,
		Entropy:         ClassEntropy(counts),
		RecordIds:       ds.RecordIds,
		NumberOfObjects: ds.Height(),
	}
	if ds.Height() > 0 {
		leaf.Prediction = majorityClass(counts)
	}
	return leaf
}

//majorityClass returns the most frequent class, the smallest label on ties.
func majorityClass(counts []int) int {
	best := 0
	for class, count := range counts {
		if count > counts[best] {
			best = class
		}
	}
	return best
}

//Stump is a one-split tree: the root routes points with a fitted splitter to two leaves.
//An unsuccessful split leaves a single leaf.
type Stump struct {
	TreeNodes []TreeNode
	LeafNodes []LeafNode
	splitter  Splitter
}

//NewStump partitions the dataset with an already fitted splitter.
func NewStump(ds Dataset, splitter Splitter, decimalPlaces int) (stump Stump, err error) {
	stump.splitter = splitter
	majority := majorityClass(ds.ClassCounts())

	if splitter.SplitQuality() <= 0 {
		stump.addLeaf(newLeafNode(ds, "", majority))
		return stump, nil
	}

	first, second, err := ds.Partition(splitter)
	if err != nil {
		return Stump{}, err
	}

	root := NewTreeNode()
	root.Condition = splitter.Description(true, decimalPlaces)
	root.SplitQuality = splitter.SplitQuality()
	root.NumberOfObjects = ds.Height()
	stump.TreeNodes = append(stump.TreeNodes, root)

	leftNodeId := stump.addLeaf(newLeafNode(first, splitter.Description(true, decimalPlaces), majority))
	rightNodeId := stump.addLeaf(newLeafNode(second, splitter.Description(false, decimalPlaces), majority))
	stump.TreeNodes[0].LeftIndex = leftNodeId
	stump.TreeNodes[0].RightIndex = rightNodeId

	return stump, nil
}

func (stump *Stump) addLeaf(leaf LeafNode) int {
	treeNodeId := len(stump.TreeNodes)
	currentTreeNode := NewTreeNode()
	currentTreeNode.TreeNodeId = treeNodeId
	currentTreeNode.NumberOfObjects = leaf.NumberOfObjects

	leafNodeId := len(stump.LeafNodes)
	currentTreeNode.LeafIndex = leafNodeId
	leaf.LeafNodeId = leafNodeId

	stump.TreeNodes = append(stump.TreeNodes, currentTreeNode)
	stump.LeafNodes = append(stump.LeafNodes, leaf)
	return treeNodeId
}

//PredictClass routes the point to a leaf and returns its majority class.
func (stump Stump) PredictClass(point []float64) int {
	ind := 0
	for stump.TreeNodes[ind].LeafIndex == -1 {
		if stump.splitter.FirstSubset(point) {
			ind = stump.TreeNodes[ind].LeftIndex
		} else {
			ind = stump.TreeNodes[ind].RightIndex
		}
	}
	return stump.LeafNodes[stump.TreeNodes[ind].LeafIndex].Prediction
}

func recurrentDraw(g *cgraph.Graph, stump Stump, nodeNumber int, parentNode *cgraph.Node) error {
	node := stump.TreeNodes[nodeNumber]
	currentNode, err := g.CreateNode(fmt.Sprint(node.TreeNodeId))
	if err != nil {
		return err
	}

	if parentNode != nil {
		if _, err := g.CreateEdge("", parentNode, currentNode); err != nil {
			return err
		}
	}

	if node.IsLeaf() {
		currentNode.Set("label", stump.LeafNodes[node.LeafIndex].GraphDescription())
		currentNode.Set("shape", "box")
		return nil
	}
	currentNode.Set("label", node.GraphDescription())
	if err := recurrentDraw(g, stump, node.LeftIndex, currentNode); err != nil {
		return err
	}
	return recurrentDraw(g, stump, node.RightIndex, currentNode)
}

//DrawGraph builds the graphviz graph of the stump. The caller closes both returned objects.
func (stump Stump) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		HandleError(graphViz.Close())
		return nil, nil, err
	}

	if err := recurrentDraw(graph, stump, 0, nil); err != nil {
		HandleError(graph.Close())
		HandleError(graphViz.Close())
		return nil, nil, err
	}
	return graphViz, graph, nil
}

var graphvizType = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

//RenderGraph renders the stump into a png, svg or jpg file.
func (stump Stump) RenderGraph(fileName, figureType string) error {
	format, ok := graphvizType[figureType]
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "unknown figure type %q", figureType)
	}

	graphViz, graph, err := stump.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		HandleError(graph.Close())
		HandleError(graphViz.Close())
	}()

	return errors.Wrapf(graphViz.RenderFilename(graph, format, fileName), "render %s", fileName)
}

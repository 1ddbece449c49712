package bsl

import "sync"

//Task is a unit of work executed by a TaskPool.
type Task interface {
	Execute()
}

//TaskPool runs tasks on a fixed number of goroutines.
type TaskPool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

//NewPool starts threadsNum workers.
func NewPool(threadsNum int) *TaskPool {
	if threadsNum < 1 {
		threadsNum = 1
	}
	pool := &TaskPool{tasks: make(chan Task)}
	pool.wg.Add(threadsNum)
	for ind := 0; ind < threadsNum; ind++ {
		go func() {
			defer pool.wg.Done()
			for task := range pool.tasks {
				task.Execute()
			}
		}()
	}
	return pool
}

//AddTask blocks until a worker takes the task.
func (pool *TaskPool) AddTask(task Task) {
	pool.tasks <- task
}

//Close tells the workers that no more tasks will come.
func (pool *TaskPool) Close() {
	close(pool.tasks)
}

//WaitAll waits until the workers finish every task. Close must be called first.
func (pool *TaskPool) WaitAll() {
	pool.wg.Wait()
}

//TaskFindBestSplit scans one attribute pair and stores the result in its own slot.
type TaskFindBestSplit struct {
	result        []CircleSplit
	slot          int
	bestSplitFunc func(slot int) CircleSplit
}

//Execute runs the scan.
func (task *TaskFindBestSplit) Execute() {
	task.result[task.slot] = task.bestSplitFunc(task.slot)
}

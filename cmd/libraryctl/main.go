// Package main 提供 libraryctl 运维命令行：拉取外部元数据、触发同步与查看资料库状态。
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cc := newCommandContext()
	cmd := newRootCommand(cc)
	err := cmd.Execute()
	cc.close()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

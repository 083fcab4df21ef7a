// Package main 启动应用程序
package main

import (
	"os"

	"github.com/yeisme/genomeinsight/pkg/cmd"
)

//	@title			GenomeInsight API
//	@version		1.0
//	@description	GenomeInsight 接收基因组数据文件，校验扩展名、大小与内容后保存，供下游分析使用。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

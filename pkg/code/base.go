package code

// Common codes // 通用码
var (
	Success              = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	Failed               = NewError(1, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal  = NewError(500, lang{en: "Server Internal Error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(400, lang{en: "Invalid Params", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(404, lang{en: "Not Found API", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(429, lang{en: "Too Many Requests", zh_cn: "请求过多"})
)

// Note codes // 笔记相关码
var (
	ErrorNoteNotFound = NewError(100101, lang{en: "Note Not Found", zh_cn: "笔记不存在"})
)

// Folder codes // 文件夹相关码
var (
	ErrorFolderNotFound  = NewError(100201, lang{en: "Folder Not Found", zh_cn: "文件夹不存在"})
	ErrorFolderNotEmpty  = NewError(100202, lang{en: "Cannot delete folder: it contains notes or subfolders", zh_cn: "无法删除文件夹：其中包含笔记或子文件夹"})
	ErrorFolderNameEmpty = NewError(100203, lang{en: "Folder name must not be empty", zh_cn: "文件夹名称不能为空"})
)

// Archive codes // 归档相关码
var (
	ErrorArchiveInvalid         = NewError(100301, lang{en: "Error reading ZIP file", zh_cn: "读取 ZIP 文件出错"})
	ErrorArchiveManifestMissing = NewError(100302, lang{en: "No notes.json found in the ZIP file", zh_cn: "ZIP 文件中未找到 notes.json"})
	ErrorArchiveNoValidNotes    = NewError(100303, lang{en: "No valid notes found in the ZIP file", zh_cn: "ZIP 文件中没有有效的笔记"})
	ErrorArchiveEmptyExport     = NewError(100304, lang{en: "No notes to download", zh_cn: "没有可下载的笔记"})
	ErrorImportNotConfirmed     = NewError(100305, lang{en: "Import requires confirmation", zh_cn: "导入需要确认"})
)

// Persistence codes // 持久化相关码
var (
	ErrorKVLoad = NewError(100401, lang{en: "Load From Local Storage Failed", zh_cn: "从本地存储加载失败"})
	ErrorKVSave = NewError(100402, lang{en: "Save To Local Storage Failed", zh_cn: "保存到本地存储失败"})
)

// Markdown codes // Markdown 相关码
var (
	ErrorMarkdownRender = NewError(100501, lang{en: "Markdown Render Failed", zh_cn: "Markdown 渲染失败"})
)
